package cli

import (
	"fmt"
	"time"
)

// StatusLine renders the per-tick console line: current loudness, how long
// the silence has lasted, and the glow value being pushed. The caller
// rewrites it in place with a leading carriage return, so the rendered
// width is kept stable by fixed-width verbs.
func StatusLine(volumeDB float64, silentFor time.Duration, glow float64) string {
	return fmt.Sprintf("%s%s %s %s%s %s %s%s",
		KeyStyle.Render("volume="), ValueStyle.Render(fmt.Sprintf("%6.1f", volumeDB)), KeyStyle.Render("dB"),
		KeyStyle.Render("silent_for="), ValueStyle.Render(fmt.Sprintf("%5.1f", silentFor.Seconds())), KeyStyle.Render("s"),
		KeyStyle.Render("eye_glow="), GlowStyle.Render(fmt.Sprintf("%4.2f", glow)))
}

// PrintBanner prints the startup summary before the status line takes over
// the bottom row.
func PrintBanner(version, endpoint, parameter string, thresholdDB float64, pushEnabled bool) {
	fmt.Println(TitleStyle.Render("SilenceFade 👁"))
	fmt.Printf("%s %s\n", KeyStyle.Render("Version:"), ValueStyle.Render(version))
	fmt.Printf("%s %s\n", KeyStyle.Render("Puppeteer:"), ValueStyle.Render(endpoint))
	fmt.Printf("%s %s\n", KeyStyle.Render("Parameter:"), ValueStyle.Render(parameter))
	fmt.Printf("%s %s\n", KeyStyle.Render("Threshold:"), ValueStyle.Render(fmt.Sprintf("%.1f dB", thresholdDB)))
	if !pushEnabled {
		fmt.Println(KeyStyle.Render("No auth token configured - computing locally only (run: silencefade token)"))
	}
	fmt.Println()
}
