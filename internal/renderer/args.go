// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package renderer

import "fmt"

// transparentBackground is the RGBA hex passed to
// --default-background-color so uncovered pixels stay transparent.
const transparentBackground = "00000000"

// ScreenshotArgs builds the browser command line that loads pageURI headless
// in a size x size window and writes the screenshot to outPath. The page URI
// is always the last argument.
func ScreenshotArgs(outPath, pageURI string, size int) []string {
	return []string{
		"--headless",
		"--screenshot=" + outPath,
		fmt.Sprintf("--window-size=%d,%d", size, size),
		"--default-background-color=" + transparentBackground,
		"--hide-scrollbars",
		"--force-device-scale-factor=1",
		pageURI,
	}
}
