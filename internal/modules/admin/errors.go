package admin

import "sahayak/internal/pkg/apperror"

var ErrAdminImmutable = apperror.New(apperror.ErrForbidden, "admin accounts cannot be blocked")
