// Package config holds the two configuration layers of the shopping
// assistant.
//
// File is the static bootstrap configuration (camera device, listen
// address, database path, speech engine) loaded once at startup from an
// optional config.yaml.
//
// Settings is the runtime-tunable record (debug flag, speech rate,
// announcement templates, thresholds) shared by reference between the
// processing pipelines and the HTTP facade. It replaces what would
// otherwise be process-global mutable state with a single mutex-guarded
// object: the HTTP facade writes through Update, the pipelines read the
// current value on every frame or barcode.
package config
