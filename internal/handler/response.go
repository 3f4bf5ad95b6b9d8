package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/Min-owo17/Mysic/pkg/errorx"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// ResponseData 统一响应结构体
type ResponseData struct {
	Code int `json:"code"`           // 业务响应状态码
	Msg  any `json:"msg"`            // 提示信息
	Data any `json:"data"`           // 数据
}

func respondWith(c *gin.Context, status int, data any) {
	c.JSON(status, ResponseData{
		Code: errorx.CodeSuccess,
		Msg:  "success",
		Data: data,
	})
}

// HandleSuccess 返回 200
func HandleSuccess(c *gin.Context, data any) {
	respondWith(c, http.StatusOK, data)
}

// HandleCreated 返回 201
func HandleCreated(c *gin.Context, data any) {
	respondWith(c, http.StatusCreated, data)
}

// HandleNoContent 返回 204，不带响应体
func HandleNoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// HandleError 通用错误处理方法
// 业务错误按错误码映射 HTTP 状态，其他错误记录日志后返回服务繁忙
//
//	if err := svc.DoSomething(); err != nil {
//	    HandleError(c, err)
//	    return
//	}
func HandleError(c *gin.Context, err error) {
	var codeErr *errorx.CodeError
	if errors.As(err, &codeErr) {
		status := errorx.HTTPStatus(codeErr.Code)
		if status != http.StatusInternalServerError {
			c.JSON(status, ResponseData{Code: codeErr.Code, Msg: codeErr.Msg})
			return
		}
	}

	// 系统错误不向前端暴露细节
	zap.L().Error("system error",
		zap.String("path", c.Request.URL.Path),
		zap.String("method", c.Request.Method),
		zap.Error(err),
	)
	c.JSON(http.StatusInternalServerError, ResponseData{
		Code: errorx.ErrServerBusy.Code,
		Msg:  errorx.ErrServerBusy.Msg,
	})
}

// HandleParamError 处理参数绑定错误（带 validator 翻译支持）
func HandleParamError(c *gin.Context, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) && Trans != nil {
		// 翻译后去除结构体名前缀
		translatedErrs := RemoveTopStruct(validationErrs.Translate(Trans))
		c.JSON(http.StatusBadRequest, ResponseData{
			Code: errorx.ErrInvalidParam.Code,
			Msg:  translatedErrs,
		})
		return
	}

	// 非 validator 错误（如 JSON 格式错误）
	zap.L().Debug("param bind error", zap.Error(err))
	c.JSON(http.StatusBadRequest, ResponseData{
		Code: errorx.ErrInvalidParam.Code,
		Msg:  errorx.ErrInvalidParam.Msg,
	})
}

// pathID 解析路径中的正整数 ID，失败时已写入 400 响应
func pathID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		HandleError(c, errorx.Newf(errorx.CodeInvalidParam, "无效的 %s", name))
		return 0, false
	}
	return uint(id), true
}
