/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package main

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"
)

// Command rejection taxonomy. Every rejected command unwraps to one of
// these; the room session maps them to private toasts, except
// errStaleAction which is dropped without a reply.
var (
	errInvalidCommand    = errors.New("invalid command")
	errNotYourTurn       = errors.New("not your turn")
	errNotHost           = errors.New("host only")
	errIllegalState      = errors.New("illegal state")
	errInsufficientFunds = errors.New("insufficient funds")
	errStaleAction       = errors.New("stale action")
)

type commandError struct {
	kind error
	msg  string
}

func (e *commandError) Error() string {
	return e.msg
}

func (e *commandError) Unwrap() error {
	return e.kind
}

// reject builds a command rejection whose message is the user-facing toast.
func reject(kind error, format string, args ...any) error {
	return &commandError{kind: kind, msg: fmt.Sprintf(format, args...)}
}

func logf(cfg *Config, format string, args ...any) {
	if !cfg.verbose {
		return
	}

	log.Printf("%s | "+format, append([]any{time.Now().Format(logDate)}, args...)...)
}

func newPage(title, body string) string {
	var htmlBody strings.Builder

	htmlBody.WriteString(`<!DOCTYPE html><html lang="en"><head>`)
	htmlBody.WriteString(`<style>`)
	htmlBody.WriteString(`html,body,a{display:block;height:100%;width:100%;text-decoration:none;color:inherit;cursor:auto;}</style>`)
	htmlBody.WriteString(fmt.Sprintf("<title>%s</title></head>", title))
	htmlBody.WriteString(fmt.Sprintf("<body><a href=\"/\">%s</a></body></html>", body))

	return htmlBody.String()
}
