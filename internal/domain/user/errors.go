package user

import (
	apperrors "github.com/xiebiao/posbuzz/pkg/errors"
)

var (
	ErrInvalidEmail = apperrors.New(apperrors.ErrCodeInvalidParams, "邮箱格式不正确")
	ErrInvalidName  = apperrors.New(apperrors.ErrCodeInvalidParams, "姓名长度应为2-50个字符")
	ErrInvalidRole  = apperrors.New(apperrors.ErrCodeInvalidParams, "角色必须为ADMIN或CASHIER")
)
