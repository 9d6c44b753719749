package memory

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/slotswap_bot/internal/model"
)

type userRepo struct {
	c *conn
}

func (r *userRepo) Create(_ context.Context, user *model.User) error {
	var err error
	r.c.write(func(st *state) {
		for _, u := range st.users {
			if u.TelegramID == user.TelegramID {
				err = fmt.Errorf("create user: telegram id %d already registered", user.TelegramID)
				return
			}
		}
		user.ID = st.nextUserID
		user.CreatedAt = r.c.now()
		st.nextUserID++
		u := *user
		st.users[user.ID] = &u
	})
	return err
}

func (r *userRepo) Update(_ context.Context, user *model.User) error {
	var err error
	r.c.write(func(st *state) {
		current, ok := st.users[user.ID]
		if !ok {
			err = fmt.Errorf("user not found")
			return
		}
		u := *user
		u.TelegramID = current.TelegramID
		u.CreatedAt = current.CreatedAt
		st.users[user.ID] = &u
	})
	return err
}

func (r *userRepo) GetByID(_ context.Context, id int64) (*model.User, error) {
	var user *model.User
	r.c.read(func(st *state) {
		if u, ok := st.users[id]; ok {
			c := *u
			user = &c
		}
	})
	return user, nil
}

func (r *userRepo) GetByTelegramID(_ context.Context, telegramID int64) (*model.User, error) {
	var user *model.User
	r.c.read(func(st *state) {
		for _, u := range st.users {
			if u.TelegramID == telegramID {
				c := *u
				user = &c
				return
			}
		}
	})
	return user, nil
}

func (r *userRepo) GetByIDs(_ context.Context, ids []int64) (map[int64]*model.User, error) {
	result := make(map[int64]*model.User, len(ids))
	r.c.read(func(st *state) {
		for _, id := range ids {
			if u, ok := st.users[id]; ok {
				c := *u
				result[id] = &c
			}
		}
	})
	return result, nil
}
