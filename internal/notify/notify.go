// Package notify sends best-effort desktop notifications through
// notify-send. Failures are deliberately silent; a missing desktop
// environment must never affect the server.
package notify

import "os/exec"

// Send shows a desktop notification with the given summary and body.
// It is a no-op when notify-send is not installed.
func Send(summary, body string) {
	path, err := exec.LookPath("notify-send")
	if err != nil {
		return
	}
	_ = exec.Command(path, summary, body).Run()
}
