/*
Package apperr defines the registry's error taxonomy.

Every failure that crosses a package boundary is classified into a Kind.
Store-level failures (for example a conditional put losing) are translated
into kinds at each call site, because the same low-level condition means
different things to different operations: a failed conditional put is
DuplicateCrateVersion during publish but NonExistentCrateVersion during yank.

The HTTP layer renders any *Error as

	{"errors":[{"detail":"<human readable>"}]}

with the status given by Kind.HTTPStatus. Errors that are not *Error are
treated as internal and never leak their message to clients.
*/
package apperr
