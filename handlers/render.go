package handlers

import (
	"fmt"
	"html"
	"net/http"
)

// page writes a minimal HTML document. A full templating layer is out of
// scope; the markup carries just enough structure for the views.
func page(w http.ResponseWriter, title string, body ...string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprintf(w, "<!DOCTYPE html>\n<html><head><title>%s</title></head><body>\n", html.EscapeString(title))
	for _, line := range body {
		fmt.Fprintln(w, line)
	}
	fmt.Fprint(w, "</body></html>\n")
}

func userLine(username string) string {
	return fmt.Sprintf(`<p class="user">@%s</p>`, html.EscapeString(username))
}

func messageLine(text string) string {
	return fmt.Sprintf(`<p class="message">%s</p>`, html.EscapeString(text))
}

func errorLine(msg string) string {
	return fmt.Sprintf(`<p class="error">%s</p>`, html.EscapeString(msg))
}

func statLine(n int64) string {
	return fmt.Sprintf(`<li class="stat">%d</li>`, n)
}

func flashLines(flashes []interface{}) []string {
	lines := make([]string, 0, len(flashes))
	for _, f := range flashes {
		if s, ok := f.(string); ok {
			lines = append(lines, fmt.Sprintf(`<p class="flash">%s</p>`, html.EscapeString(s)))
		}
	}
	return lines
}
