// @title                       StudentVue API
// @version                     1.0
// @description                 JSON gateway in front of district StudentVue web services.
// @BasePath                    /
// @securityDefinitions.basic   BasicAuth
// @securityDefinitions.apikey  BearerToken
// @in                          header
// @name                        Authorization
// @securityDefinitions.apikey  AdminJWT
// @in                          header
// @name                        Authorization
package main

import "github.com/gradepeek/svue-api/cmd/svue-api/cmd"

func main() {
	cmd.Execute()
}
