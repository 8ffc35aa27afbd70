package webtests

import (
	"github.com/qaforge/web-tests/framework"
)

const (
	MarkerSauceDemo = "saucedemo"
	MarkerDemoQA    = "demoqa"
	MarkerReqRes    = "reqres"
)

func RunTestSuite(
	env *Environment,
	filter framework.Filter,
	testLogger framework.TestLogger,
) framework.Results {
	return framework.Run(filter, testLogger, func(c *framework.Context) {
		t := &T{context: c, env: env}

		t.Group("saucedemo", DoSauceDemoTests, MarkerSauceDemo)
		t.Group("demoqa", DoDemoQATests, MarkerDemoQA)
		t.Group("reqres", DoReqResTests, MarkerReqRes, framework.MarkerAPI)
	})
}
