// Package adyaxws provides a small node web service library: a request
// validation pipeline in front of a pluggable node repository.
//
// It exposes a single Service interface that resolves nodes from raw request
// identifiers, extracts the required node fields from request bodies, runs the
// field constraint checker and persists the result. Repository
// implementations (memory, Postgres, SQLite, Redis) are provided under
// subpackages and the HTTP surface lives in the api subpackage.
//
// Validation Errors
//
// Every input or schema problem is reported as a *ValidationError carrying an
// ordered list of human readable messages. Callers turn it into the
// {"errors": [...]} envelope with Messages. Any other error returned by the
// Service comes from a collaborator (repository, event sink) and must be
// handled as an internal failure.
package adyaxws
