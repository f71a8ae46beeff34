/*

Package logger provides logging functionality to a slop app by defining the
required behavior in [Logger] and providing an implementation of it with
[SlopLogger].

The Logger interface outputs messages at certain levels of importance.
An implementation may be initialized at a certain [LogLevel] and only emit
messages at or above that level.

Log messages emitted by [SlopLogger] are composed of a timestamp, log level,
call site, message, and an optional JSON-encoded [*LogContext]:

	2022/04/28 15:55:21 [INFO] slop/http/engine/dispatch.go:43 'GET /users/7 200' log_context: {"data":{"status":200}}

When the SENTRY_DSN environment variable is set, [New] decorates the
SlopLogger with a [SentryLogger] that additionally ships warning, error, and
fatal events to Sentry.

Sometimes, especially with internal packages, the file and line number in a
log needs to be configurable; [SkipLogger] sets the number of frames to skip
back in order to reach the desired caller.

*/
package logger
