// Package cli provides the interactive EduTalk terminal client.
//
// The client drives the session and content stores through a small REPL:
// sign up, log in and out, edit the profile, browse scholarships and courses,
// read the community feed and post, reply or like. Store change events are
// printed as notices as they happen.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits or
// the input ends.
package cli
