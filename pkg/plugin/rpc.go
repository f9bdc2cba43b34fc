package plugin

import (
	"context"
	"errors"
	"net/rpc"

	"github.com/hashicorp/go-plugin"
)

// RendererRPC implements plugin.Plugin for renderers over net/rpc.
type RendererRPC struct {
	plugin.Plugin
	Impl Renderer
}

// Server returns an RPC server for this plugin.
func (p *RendererRPC) Server(*plugin.MuxBroker) (any, error) {
	return &RendererRPCServer{Impl: p.Impl}, nil
}

// Client returns an RPC client for this plugin.
func (p *RendererRPC) Client(_ *plugin.MuxBroker, c *rpc.Client) (any, error) {
	return &RendererRPCClient{client: c}, nil
}

// RendererRPCServer runs in the plugin process and forwards calls to Impl.
type RendererRPCServer struct {
	Impl Renderer
}

// Render implements the RPC method for rendering.
func (s *RendererRPCServer) Render(palette PaletteData, resp *map[string][]byte) error {
	files, err := s.Impl.Render(context.Background(), palette)
	if err != nil {
		return err
	}
	*resp = files
	return nil
}

// GetMetadata implements the RPC method for fetching plugin metadata.
func (s *RendererRPCServer) GetMetadata(_ any, resp *PluginInfo) error {
	*resp = s.Impl.GetMetadata()
	return nil
}

// RendererRPCClient runs in the host and implements Renderer by calling the plugin.
type RendererRPCClient struct {
	client *rpc.Client
}

// Render calls the remote Render method. Errors returned by the plugin are
// reported as *RPCError.
func (c *RendererRPCClient) Render(ctx context.Context, palette PaletteData) (map[string][]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var files map[string][]byte
	if err := c.client.Call("Plugin.Render", palette, &files); err != nil {
		return nil, asRPCError(err)
	}
	return files, nil
}

// GetMetadata calls the remote GetMetadata method. A failed call returns an
// empty PluginInfo; use Metadata to see the error.
func (c *RendererRPCClient) GetMetadata() PluginInfo {
	info, _ := c.Metadata()
	return info
}

// Metadata calls the remote GetMetadata method.
func (c *RendererRPCClient) Metadata() (PluginInfo, error) {
	var info PluginInfo
	if err := c.client.Call("Plugin.GetMetadata", new(any), &info); err != nil {
		return PluginInfo{}, asRPCError(err)
	}
	return info, nil
}

// RPCError is an error raised inside the plugin process.
type RPCError struct {
	Message string
}

// Error implements the error interface.
func (e *RPCError) Error() string {
	return e.Message
}

// asRPCError converts errors returned by the remote side into *RPCError and
// leaves transport errors untouched.
func asRPCError(err error) error {
	var serverErr rpc.ServerError
	if errors.As(err, &serverErr) {
		return &RPCError{Message: string(serverErr)}
	}
	return err
}
