// Package ecode defines the business codes carried in management response
// envelopes and their mapping to HTTP status codes.
//
// Code convention:
//   - 0: success
//   - -400 to -499: request errors
//   - -500 and below: server and availability errors
package ecode
