package main

import (
	"fmt"
	"sort"
	"strconv"
	"sync"

	"github.com/km-arc/go-nest/framework/app"
	"github.com/km-arc/go-nest/framework/container"
	gohttp "github.com/km-arc/go-nest/framework/http"
	"github.com/km-arc/go-nest/framework/validation"
)

func main() {
	application := app.New() // loads .env automatically

	// The repository's backing store outlives requests; everything else
	// in the graph is rebuilt per request by the registry.
	store := newUserStore()

	application.Provide(usersProvider(store))
	application.Annotate("users.store", validation.Rules{
		"name":  "required|min:2|max:100",
		"email": "required|email",
	})

	application.Resource("/api/v1/users", app.ResourceIdentities{
		Index:   "users.index",
		Store:   "users.store",
		Show:    "users.show",
		Destroy: "users.destroy",
	})

	application.Run()
}

// usersProvider registers the users component graph:
// handlers → service → repository.
func usersProvider(store *userStore) container.Provider {
	return container.ProviderFunc(func(r *container.Registry) error {
		return container.Injectables{
			{Identity: "users.repo", New: func(deps ...any) any {
				return &userRepo{store: store}
			}},
			{Identity: "users.service", New: func(deps ...any) any {
				return &userService{repo: deps[0].(*userRepo)}
			}, Deps: []string{"users.repo"}},
			{Identity: "users.index", New: func(deps ...any) any {
				return &listUsers{svc: deps[0].(*userService)}
			}, Deps: []string{"users.service"}},
			{Identity: "users.store", New: func(deps ...any) any {
				return &createUser{svc: deps[0].(*userService)}
			}, Deps: []string{"users.service"}},
			{Identity: "users.show", New: func(deps ...any) any {
				return &showUser{svc: deps[0].(*userService)}
			}, Deps: []string{"users.service"}},
			{Identity: "users.destroy", New: func(deps ...any) any {
				return &deleteUser{svc: deps[0].(*userService)}
			}, Deps: []string{"users.service"}},
		}.Apply(r)
	})
}

// ── Domain ───────────────────────────────────────────────────────────────────

type user struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// userStore is the process-lifetime backing store.
type userStore struct {
	mu    sync.Mutex
	seq   int
	users map[int]user
}

func newUserStore() *userStore {
	return &userStore{users: make(map[int]user)}
}

type userRepo struct {
	store *userStore
}

func (r *userRepo) all() []user {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	out := make([]user, 0, len(r.store.users))
	for _, u := range r.store.users {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (r *userRepo) find(id int) (user, bool) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	u, ok := r.store.users[id]
	return u, ok
}

func (r *userRepo) create(name, email string) user {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.seq++
	u := user{ID: r.store.seq, Name: name, Email: email}
	r.store.users[u.ID] = u
	return u
}

func (r *userRepo) remove(id int) bool {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.users[id]; !ok {
		return false
	}
	delete(r.store.users, id)
	return true
}

type userService struct {
	repo *userRepo
}

func (s *userService) list() []user { return s.repo.all() }

func (s *userService) get(id int) (user, error) {
	u, ok := s.repo.find(id)
	if !ok {
		return user{}, gohttp.NotFoundError(fmt.Sprintf("user %d not found", id))
	}
	return u, nil
}

func (s *userService) create(name, email string) user {
	return s.repo.create(name, email)
}

func (s *userService) remove(id int) error {
	if !s.repo.remove(id) {
		return gohttp.NotFoundError(fmt.Sprintf("user %d not found", id))
	}
	return nil
}

// ── Handlers ─────────────────────────────────────────────────────────────────

type listUsers struct {
	svc *userService
}

func (h *listUsers) Handle(req *gohttp.Request) (any, error) {
	return h.svc.list(), nil
}

type createUser struct {
	svc *userService
}

func (h *createUser) Handle(req *gohttp.Request) (any, error) {
	var body struct {
		Name  string `json:"name"`
		Email string `json:"email"`
	}
	if err := req.Bind(&body); err != nil {
		return nil, gohttp.BadRequestError(err.Error())
	}
	return h.svc.create(body.Name, body.Email), nil
}

type showUser struct {
	svc *userService
}

func (h *showUser) Handle(req *gohttp.Request) (any, error) {
	id, err := strconv.Atoi(req.Param("id"))
	if err != nil {
		return nil, gohttp.BadRequestError("id must be an integer")
	}
	return h.svc.get(id)
}

type deleteUser struct {
	svc *userService
}

func (h *deleteUser) Handle(req *gohttp.Request) (any, error) {
	id, err := strconv.Atoi(req.Param("id"))
	if err != nil {
		return nil, gohttp.BadRequestError("id must be an integer")
	}
	return nil, h.svc.remove(id)
}
