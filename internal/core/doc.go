// Package core provides the business logic for MiniCRM, an administrative
// tracker of organizations and the projects they run.
//
// All operations go through [Service], which is built over a [Store].
// [PGStore] keeps data in PostgreSQL; [MemStore] keeps it in memory for
// local runs and tests. Neither is global: main constructs one and hands
// it to [NewService].
//
// # Lists
//
// [Service.ListOrganizations] and [Service.ListProjects] apply
// case-insensitive substring filters and return a [Page] of [PageSize]
// rows. Requesting a page past the end yields an empty page, not an error.
//
// # Mutations and audit
//
// Every add, edit and delete validates a typed input first
// ([OrganizationInput], [ProjectInput]). On success the change and one
// [AuditEntry] are written in the same transaction; a validation failure
// writes nothing.
//
// # Master lists
//
// Countries and sectors ([MasterKind]) are lookup lists. Organizations and
// projects store a copy of the name, so deleting a master value never
// touches them.
//
// # Bulk import
//
// [Service.ImportOrganizations] and [Service.ImportProjects] read a CSV
// upload with a header row and apply it in one transaction. Rows missing
// required values are skipped and counted, never reported individually.
//
// # Errors
//
// [MapError] converts any error returned here into a [UserMessage] with a
// support code.
package core
