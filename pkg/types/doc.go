// Package types holds the shared types used across monolink: the filesystem
// interface that all disk-touching code goes through, and the workspace
// descriptor types (projects, dependency declarations) that drive linking.
package types
