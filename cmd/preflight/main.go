// cmd/preflight/main.go
package main

import (
	"fmt"
	"os"
	"strings"
)

func main() {
	fail := func(msg string) {
		fmt.Fprintln(os.Stderr, "✖", msg)
		os.Exit(1)
	}
	warn := func(msg string) { fmt.Fprintln(os.Stderr, "⚠", msg) }
	ok := func(msg string) { fmt.Println("✔", msg) }

	urls := map[string]string{
		"BLOG_URL":         strings.TrimSpace(os.Getenv("BLOG_URL")),
		"API_URL":          strings.TrimSpace(os.Getenv("API_URL")),
		"UPLOAD_URL":       strings.TrimSpace(os.Getenv("UPLOAD_URL")),
		"CRON_MONITOR_URL": strings.TrimSpace(os.Getenv("CRON_MONITOR_URL")),
	}

	anySet := false
	for name, v := range urls {
		if v == "" {
			warn(name + " empty — localhost default will be probed.")
			continue
		}
		anySet = true
		if !strings.Contains(v, "://") {
			fail(name + " has no scheme; use https://host, got: " + v)
		}
		ok(name + "=" + v)
	}

	if extra := strings.TrimSpace(os.Getenv("EXTRA_TARGETS")); extra != "" {
		anySet = true
		for _, entry := range strings.Split(extra, ",") {
			if strings.Count(entry, "=") < 2 {
				fail("EXTRA_TARGETS entry not name=kind=url: " + entry)
			}
		}
		ok("EXTRA_TARGETS parsed")
	}

	if !anySet {
		warn("no target URLs set — every probe will hit localhost defaults.")
	}

	if addr := strings.TrimSpace(os.Getenv("ADDR")); addr == "" {
		warn("ADDR is empty; default in your app may be used.")
	} else {
		ok("ADDR=" + addr)
	}

	ok("preflight passed")
}
