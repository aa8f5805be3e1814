// Package notify delivers tender match alerts.
//
// A Notifier receives a rendered Message for each match worth
// alerting on. SMTPNotifier delivers over email; LogNotifier writes
// alerts to the structured log and backs offline operation.
package notify
