/*

Package slop holds the constants, enums, and sentinel errors shared by every
slop subpackage.

The actual functionality of a slop app lives in the subpackages:

  - http/engine: route and middleware registration plus the request dispatcher
  - http/pattern: path-template matching with named parameters
  - http/middleware: stock middleware handlers
  - http/adapter: listener adapters translating native HTTP objects
    into the engine's request/response model
  - logger: leveled, structured logging
  - server: application bootstrap, configuration, and graceful shutdown

*/
package slop
