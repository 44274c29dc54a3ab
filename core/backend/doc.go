// Package backend implements the catalog's storage collaborators: the
// components that turn a resolved location into raw template records.
//
// # Implementations
//
// ObjectStore serves records from an S3/MinIO bucket. Folder locations list
// the key prefix recursively and download every record document under it;
// singleton locations fetch one exact key.
//
// Dir serves records from an fs.FS: a local content checkout during
// development (os.DirFS), or fstest.MapFS fixtures in tests. The catalog
// core never knows which backend it talks to.
//
// # Record Documents
//
// Both backends share one document format. A document is a JSON file that is
// either a single object — one record, named by its "name" field or by the
// file stem when the field is absent — or an array of named objects for
// content packs that bundle several records in one file. Document payloads
// are never interpreted here; they travel through the catalog as opaque
// json.RawMessage values.
//
// Records are produced in key/path order (lexical), which is the order the
// catalog's duplicate-name policy applies to.
package backend
