// Package uimodel links bitset-based model state to a UI element tree.
//
// This package defines the change-notification engine for flag-driven user
// interfaces: components declare which model flags they depend on with a
// watch mask, the model announces committed changes as a changed-bits mask,
// and only the components whose masks overlap the change are invalidated.
//
// # Core Types
//
// Notifier is the registry mapping watch masks to ordered sets of elements.
// One notifier serves one model instance; elements watching it are marked
// dirty when a dispatched change overlaps their mask.
//
// LinkState tracks the registrations of a single element. It keeps the
// common single-notifier case allocation-free and promotes itself to a
// multi-notifier record when an element watches several models at once.
//
// Model is the facade an application holds: it owns the notifier, accepts
// committed change masks from a flag register, and is the handle components
// watch during their render pass.
//
// # Watching From a Render Pass
//
// A component participates by holding a Binder for its element and calling
// Watch while it renders:
//
//	type sidebar struct {
//	    binder *uimodel.Binder
//	}
//
//	func (s *sidebar) Render(ctx *uitree.Context) {
//	    ctx.Watch(appModel, uimodel.Bit(FlagSelection)|uimodel.Bit(FlagTheme))
//	    // ... produce output from model state ...
//	}
//
// Re-running a render with the same mask is free; changing the mask
// re-registers the element atomically from the notifier's point of view.
// Watch with mask 0 keeps the registration alive while expressing no
// current interest.
//
// # Change Sources
//
// Any register that announces one changed-bits value per committed
// transition can drive a model:
//
//	reg := flagreg.New(nil)
//	model := uimodel.NewModel(reg)
//	reg.Set(3) // commits, model dispatches, watchers of bit 3 rebuild
//
// Applications without a register call Model.Notify directly.
//
// # Violations
//
// Misuse of the engine (unregistering an absent pair, duplicate
// registration, use after DisposeAll) never returns an error. Violations
// are reported through the errors package handler; in debug mode
// (DebugMode, the default) reporting is followed by a panic so protocol
// breaks surface immediately, in release mode the engine logs and
// continues so state bookkeeping can never crash the UI.
//
// # Concurrency
//
// Notifier and Model are safe for concurrent use. LinkState and Binder are
// not; they belong to the host's render thread, like the element they
// serve. Dispatch never holds internal locks while invoking element hooks,
// so hooks may freely bind, unbind, or dispatch again.
package uimodel
