package webtests

import (
	"net/http"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"

	"github.com/qaforge/web-tests/apps/reqres"
	"github.com/qaforge/web-tests/framework"
	"github.com/qaforge/web-tests/servicedef"
)

func DoReqResTests(t *T) {
	t.Group("users", doUserTests)
	t.Group("auth", doAuthTests)
}

func doUserTests(t *T) {
	t.Run("list users", func(t *T) {
		list, resp, err := t.ReqRes().ListUsers(t.APIContext(), 2)
		require.NoError(t, err)
		require.NoError(t, reqres.ExpectStatus(resp, http.StatusOK))
		assert.Equal(t, 2, list.Page)
		assert.NotEmpty(t, list.Data)
		assert.Equal(t, len(list.Data), reqres.Body(resp).GetByKey("data").Count())
	}, framework.MarkerSmoke)

	t.Run("get single user", func(t *T) {
		user, resp, err := t.ReqRes().GetUser(t.APIContext(), 2)
		require.NoError(t, err)
		require.NoError(t, reqres.ExpectStatus(resp, http.StatusOK))
		assert.Equal(t, 2, user.ID)
		assert.NotEmpty(t, user.Email)
	})

	t.Run("user not found", func(t *T) {
		_, resp, err := t.ReqRes().GetUser(t.APIContext(), 23)
		require.NoError(t, err)
		assert.NoError(t, reqres.ExpectStatus(resp, http.StatusNotFound))
	})

	t.Run("create user", func(t *T) {
		params := servicedef.UserParams{Name: "morpheus", Job: "leader"}
		created, resp, err := t.ReqRes().CreateUser(t.APIContext(), params)
		require.NoError(t, err)
		require.NoError(t, reqres.ExpectStatus(resp, http.StatusCreated))
		assert.Equal(t, params.Name, created.Name)
		assert.Equal(t, params.Job, created.Job)
		assert.NotEmpty(t, created.ID)
	})

	t.Run("update user", func(t *T) {
		params := servicedef.UserParams{Name: "morpheus", Job: "zion resident"}
		updated, resp, err := t.ReqRes().UpdateUser(t.APIContext(), 2, params)
		require.NoError(t, err)
		require.NoError(t, reqres.ExpectStatus(resp, http.StatusOK))
		assert.Equal(t, params.Job, updated.Job)
		assert.NotEmpty(t, updated.UpdatedAt)
	})

	t.Run("delete user", func(t *T) {
		resp, err := t.ReqRes().DeleteUser(t.APIContext(), 2)
		require.NoError(t, err)
		assert.NoError(t, reqres.ExpectStatus(resp, http.StatusNoContent))
	})
}

func doAuthTests(t *T) {
	t.Run("login success", func(t *T) {
		creds := t.Config().ReqRes.Login
		result, resp, err := t.ReqRes().Login(t.APIContext(), servicedef.LoginParams{
			Email:    creds.Username,
			Password: ldvalue.NewOptionalString(creds.Password),
		})
		require.NoError(t, err)
		require.NoError(t, reqres.ExpectStatus(resp, http.StatusOK))
		assert.NotEmpty(t, result.Token.StringValue())
	}, framework.MarkerSmoke)

	t.Run("login missing password", func(t *T) {
		result, resp, err := t.ReqRes().Login(t.APIContext(), servicedef.LoginParams{
			Email: t.Config().ReqRes.Login.Username,
		})
		require.NoError(t, err)
		require.NoError(t, reqres.ExpectStatus(resp, http.StatusBadRequest))
		assert.Equal(t, servicedef.ErrorMissingPassword, result.Error.StringValue())
	})
}
