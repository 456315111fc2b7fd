// Package domain contains the core domain entities shared across the
// application: scan requests, risk findings and the report returned for a
// scanned contract. The types are free of infrastructure concerns so that the
// rule registry, the scanners and the transport layer can all depend on them.
package domain
