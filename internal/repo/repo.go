package repo

import (
	"github.com/maisonshop/backend/internal/pg"
	orderrepo "github.com/maisonshop/backend/internal/repo/order-repo"
	userrepo "github.com/maisonshop/backend/internal/repo/user-repo"
)

type Repositories struct {
	UserRepo  *userrepo.Repository
	OrderRepo *orderrepo.Repository
}

func New(conn pg.Database, txManager pg.TXManager) *Repositories {
	return &Repositories{
		UserRepo:  userrepo.New(conn),
		OrderRepo: orderrepo.New(conn, txManager),
	}
}
