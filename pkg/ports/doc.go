/*
Package ports defines the driven ports (interfaces) of the site editor.

These interfaces decouple the editor from external implementations, allowing
the same command core to run against various storage backends and template
sources.

# Key Interfaces

  - StateStore: persists and loads the editor State under a key.
  - TemplateLibrary: lists page templates a document can start from.
  - DistributedLocker: coordinates access to one key across replicas.
*/
package ports
