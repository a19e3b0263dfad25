/*
Package decolor converts color images to grayscale while preserving the perceived color contrast.

Instead of using fixed luminance coefficients, the channel weights are chosen for every image:
a set of pixel pairs is sampled on a grid independent of the image resolution,
the pairs with noticeable color difference are retained, then every convex combination
of the R, G and B channels with a step of 0.1 is scored by how well its projection
reproduces the color distances. The best scoring combination is used for the conversion.

The package provides a command line interface, supporting various flags for batch conversions.
To check the supported commands type:

	$ decolor --help

In case you wish to integrate the API in a self constructed environment here is a simple example:

	package main

	import (
		"fmt"
		"github.com/esimov/decolor"
	)

	func main() {
		p := &decolor.Processor{
			// Initialize struct variables
		}

		if err := p.Process(in, out); err != nil {
			fmt.Printf("Error converting image: %s", err.Error())
		}
	}
*/
package decolor
