// Package preflight provides readiness checks for the binaries and
// filesystem paths img2gif depends on.
//
// These checks run in two contexts:
//   - convert calls RunAll before creating an engine session and refuses to
//     start when a directory is unusable.
//   - The CLI "img2gif check" command prints every check, including the
//     binary lookups from CheckSystemDeps.
package preflight
