/*
Package ports defines the interfaces (driven ports) the converter service uses
to reach infrastructure.

Adapters in pkg/adapters implement them; RunResultCacheContract verifies that an
adapter honors the shared contract.
*/
package ports
