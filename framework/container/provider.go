package container

// ── Provider interface ────────────────────────────────────────────────────────

// Provider is the registration hook: the mechanism by which a group of
// types becomes known to the Registry at bootstrap.
//
// Providers run exactly once, before the first Resolve call, applied by
// the composition root (see app.Application.Provide). A provider that
// re-registers an identity surfaces the Registry's
// *DuplicateRegistrationError, which the composition root treats as a
// fatal startup error.
//
//	type UserProvider struct{}
//
//	func (UserProvider) Register(r *container.Registry) error {
//	    return container.Injectables{
//	        {Identity: "user.repo", New: newUserRepo},
//	        {Identity: "user.service", New: newUserService, Deps: []string{"user.repo"}},
//	    }.Apply(r)
//	}
type Provider interface {
	Register(r *Registry) error
}

// ProviderFunc adapts a plain function to the Provider interface.
type ProviderFunc func(r *Registry) error

func (f ProviderFunc) Register(r *Registry) error { return f(r) }

// ── Injectable descriptors ────────────────────────────────────────────────────

// Injectable describes one constructible type as data: its identity, its
// constructor, and its ordered dependency identities.
type Injectable struct {
	Identity string
	New      Constructor
	Deps     []string
}

// Injectables is a registration list applied in order.
type Injectables []Injectable

// Apply registers every injectable, stopping at the first error.
func (list Injectables) Apply(r *Registry) error {
	for _, in := range list {
		if err := r.Register(in.Identity, in.New, in.Deps...); err != nil {
			return err
		}
	}
	return nil
}
