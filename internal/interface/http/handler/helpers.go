package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	apperrors "github.com/xiebiao/posbuzz/pkg/errors"
	"github.com/xiebiao/posbuzz/pkg/response"
)

// bindError 参数绑定/校验失败
func bindError(c *gin.Context, err error) {
	response.Error(c, apperrors.ErrBindError.WithMessage("参数错误: "+err.Error()))
}

// pathID 解析路径中的:id，非法时直接写响应并返回false
func pathID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		response.Error(c, apperrors.ErrInvalidParams.WithMessage("无效的ID").
			WithDetails(map[string]interface{}{"id": c.Param("id")}))
		return 0, false
	}
	return uint(id), true
}

// queryInt 读取整数查询参数，缺省返回def
func queryInt(c *gin.Context, key string, def int) (int, bool) {
	raw := c.Query(key)
	if raw == "" {
		return def, true
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		response.Error(c, apperrors.ErrInvalidParams.WithMessage(key+"必须为整数").
			WithDetails(map[string]interface{}{key: raw}))
		return 0, false
	}
	return v, true
}
