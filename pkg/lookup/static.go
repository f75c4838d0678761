package lookup

import "context"

// Static is an in-memory Lookup over fixed user and team lists. The serve
// protocol and tests use it; everything not listed reports absent.
type Static struct {
	users map[string]struct{}
	teams map[string]struct{}
}

// NewStatic builds a static lookup. Teams are given as "org/team" slugs.
func NewStatic(users, teams []string) *Static {
	s := &Static{
		users: make(map[string]struct{}, len(users)),
		teams: make(map[string]struct{}, len(teams)),
	}
	for _, u := range users {
		s.users[u] = struct{}{}
	}
	for _, t := range teams {
		s.teams[t] = struct{}{}
	}
	return s
}

func (s *Static) UserExists(_ context.Context, name string) (bool, error) {
	_, ok := s.users[name]
	return ok, nil
}

func (s *Static) TeamExists(_ context.Context, org, team string) (TeamStatus, error) {
	if _, ok := s.teams[org+"/"+team]; ok {
		return TeamStatusExists, nil
	}
	return TeamStatusNotFound, nil
}
