package response

import (
	"net/http"

	"blog_platform/pkg/apperrors"
	"blog_platform/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// HandleError 将业务错误映射为统一响应
// Internal 类错误记录日志并返回脱敏信息，其余按类别返回
func HandleError(c *gin.Context, err error) {
	appErr := apperrors.As(err)

	switch appErr.Kind {
	case apperrors.KindAuthorization:
		Forbidden(c, appErr.Message, appErr.Details)
	case apperrors.KindInternal:
		if logger.Log != nil {
			logger.Log.Error("internal error",
				zap.String("path", c.Request.URL.Path),
				zap.Error(appErr),
			)
		}
		msg := "Internal server error"
		if gin.Mode() != gin.ReleaseMode {
			msg = appErr.Error()
		}
		Error(c, http.StatusInternalServerError, msg)
	default:
		Error(c, appErr.HTTPStatus(), appErr.Message)
	}
}
