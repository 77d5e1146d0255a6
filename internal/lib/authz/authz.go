// Package authz содержит правила авторизации: кто и над чем может
// выполнять операции. Правила чистые, без обращения к хранилищу,
// и возвращают доменные ошибки из пакета apperr.
package authz

import (
	"github.com/magabrotheeeer/product-catalog/internal/apperr"
	"github.com/magabrotheeeer/product-catalog/internal/models"
)

// CanModifyProduct сообщает, может ли пользователь изменять или удалять товар:
// владелец или суперпользователь.
func CanModifyProduct(user *models.User, product *models.Product) bool {
	return user.ID == product.OwnerID || user.IsSuperuser
}

// RequireActive возвращает ErrInactiveAccount, если учетная запись деактивирована.
func RequireActive(user *models.User) error {
	if !user.IsActive {
		return apperr.ErrInactiveAccount
	}
	return nil
}

// RequireSuperuser возвращает ErrForbidden, если пользователь не суперпользователь.
func RequireSuperuser(user *models.User) error {
	if !user.IsSuperuser {
		return apperr.ErrForbidden
	}
	return nil
}

// RequireNotSelf запрещает операцию над собственной учетной записью:
// суперпользователь не может удалить сам себя.
func RequireNotSelf(actingUser *models.User, targetID int64) error {
	if actingUser.ID == targetID {
		return apperr.ErrInvalidOperation
	}
	return nil
}
