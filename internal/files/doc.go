// Package files provides file system discovery for the attendance
// archive and access to generated report artifacts.
//
// Discovery walks the archive's month folders (YYYY-MM) and returns
// the notebook documents found there, each with the meeting date
// derived from the folder name and the leading digits of the
// filename.
//
// Manager lists and resolves report artifacts in the reports
// directory, rejecting filenames that escape it.
package files
