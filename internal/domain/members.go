package domain

import (
	"errors"

	"golang.org/x/exp/slices"
)

var (
	ErrMemberNotFound      = errors.New("member not found")
	ErrMemberAlreadyExists = errors.New("member already exists")
)

// Member is a participant of a room, identified by its connection id.
type Member struct {
	Id   string `json:"id"`
	Name string `json:"name"`
}

// Members keeps participants in join order. The host is always a member of
// the list, or empty when the list is empty.
type Members struct {
	list   []Member
	hostId string
}

func NewMembers() *Members {
	return &Members{}
}

func (m Members) Length() int {
	return len(m.list)
}

func (m Members) AsList() []Member {
	list := make([]Member, len(m.list))
	copy(list, m.list)
	return list
}

func (m Members) Ids() []string {
	ids := make([]string, 0, len(m.list))
	for _, member := range m.list {
		ids = append(ids, member.Id)
	}

	return ids
}

func (m Members) GetById(id string) (Member, int, error) {
	index := slices.IndexFunc(m.list, func(member Member) bool {
		return member.Id == id
	})
	if index == -1 {
		return Member{}, 0, ErrMemberNotFound
	}

	return m.list[index], index, nil
}

func (m Members) Contains(id string) bool {
	_, _, err := m.GetById(id)
	return err == nil
}

func (m Members) HostId() string {
	return m.hostId
}

func (m Members) IsHost(id string) bool {
	return m.hostId != "" && m.hostId == id
}

// Add appends member and reports whether it became the host.
func (m *Members) Add(member Member) (bool, error) {
	if m.Contains(member.Id) {
		return false, ErrMemberAlreadyExists
	}

	m.list = append(m.list, member)
	if m.hostId == "" {
		m.hostId = member.Id
		return true, nil
	}

	return false, nil
}

// RemoveById removes the member. If the host left and others remain, the
// earliest remaining member becomes host and is returned as newHost.
func (m *Members) RemoveById(id string) (removed Member, newHost *Member, err error) {
	member, index, err := m.GetById(id)
	if err != nil {
		return Member{}, nil, err
	}

	m.list = slices.Delete(m.list, index, index+1)

	if m.hostId != id {
		return member, nil, nil
	}

	if len(m.list) == 0 {
		m.hostId = ""
		return member, nil, nil
	}

	next := m.list[0]
	m.hostId = next.Id
	return member, &next, nil
}
