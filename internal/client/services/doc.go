// Package services contains the application services of the contact
// directory client. Each service is an interface with a private
// implementation built by a New* constructor, and works on the shared
// state.Store:
//
//   - SessionService resolves the current identity (fail-open to anonymous).
//   - DirectoryService fetches the contact list and renders it.
//   - MutationService creates, updates and deletes contacts.
//   - AuthService logs in, signs up and logs out.
//   - PictureService downloads contact pictures through an LRU cache.
//   - ExportService stores the CSV export in a local file, an XLSX workbook
//     or an S3 bucket.
package services
