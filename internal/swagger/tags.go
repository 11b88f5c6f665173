package swagger

// @Tag.name Meta
// @Tag.description Operational probes and metadata about the audit service.

// @Tag.name Audit Events
// @Tag.description Record and query the immutable audit trail.
