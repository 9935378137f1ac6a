// Package api exposes the HTTP facade used by a companion client to
// manage runtime settings and the barcode catalog.
//
// The surface is six JSON endpoints:
//
//	GET    /api/settings        current settings map
//	POST   /api/settings        apply settings (unknown keys ignored)
//	GET    /api/barcodes        all product records
//	POST   /api/barcodes        create a record (409 on duplicate)
//	GET    /api/barcodes/{id}   one record (404 if absent)
//	DELETE /api/barcodes/{id}   remove a record (404 if absent)
//
// Settings writes land in the shared config.Settings record and take
// effect on the next processed frame or barcode; catalog writes go
// straight to the store with no cache in between. The server assumes a
// single trusted local client and performs no authentication.
package api
