// Package auditservice records and serves an append-only audit trail of
// client, invoice and system events.
//
// @title Audit Service API
// @version 25.10.14.1
// @description Append-only audit trail for client and invoice lifecycle events.
// @BasePath /
package auditservice
