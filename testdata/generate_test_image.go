// Test image generator for trying duotint by hand. It writes a two-tone
// image whose larger area is a saturated red and whose smaller area is a
// pale teal, plus a small noisy border.
//
//	go run testdata/generate_test_image.go
package main

import (
	"image"
	"image/color"
	"image/png"
	"math/rand/v2"
	"os"
)

func main() {
	const width, height = 400, 300
	img := image.NewNRGBA(image.Rect(0, 0, width, height))

	dominant := color.NRGBA{R: 200, G: 30, B: 30, A: 255}
	secondary := color.NRGBA{R: 170, G: 215, B: 215, A: 255}
	rng := rand.New(rand.NewPCG(1, 2))

	for y := range height {
		for x := range width {
			switch {
			case x < 8 || y < 8 || x >= width-8 || y >= height-8:
				v := uint8(rng.IntN(256))
				img.SetNRGBA(x, y, color.NRGBA{R: v, G: v, B: v, A: 255})
			case x < width*3/5:
				img.SetNRGBA(x, y, dominant)
			default:
				img.SetNRGBA(x, y, secondary)
			}
		}
	}

	file, err := os.Create("testdata/duotone.png")
	if err != nil {
		panic(err)
	}
	defer file.Close()

	if err := png.Encode(file, img); err != nil {
		panic(err)
	}

	println("Test image created: testdata/duotone.png")
}
