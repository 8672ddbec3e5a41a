// Package mail provides the outbound mail transport used by message
// delivery handlers, implemented over SMTP.
package mail
