// Package builtin provides the stock tool set: web search and page
// fetching, raw HTTP, shell and script execution, package installation,
// and workspace file access.
//
// Every handler follows the same contract: it never returns an error to
// the interpreter for operational failures. Network errors, bad paths,
// non-zero exits and timeouts all come back as diagnostic strings, so
// executed code can read the outcome instead of aborting on it. Errors
// are reserved for conditions the snippet cannot act on.
//
// Tools that touch the filesystem go through a workspace.Gateway and
// cannot reach outside its root. The shell and script tools run real
// subprocesses and carry no such confinement; callers who need isolation
// run the whole process in a container.
package builtin
