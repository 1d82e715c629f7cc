// Package manager owns the lifecycle of the active catalog: initial load
// from the configured JSON files, atomic swap on reload, and the two
// reload triggers — an fsnotify watcher on the backing files and an
// optional cron schedule.
//
// The evaluation path never sees a half-loaded catalog: a reload builds
// the new catalog completely before swapping it in, and a failed reload
// keeps the previous catalog active.
package manager
