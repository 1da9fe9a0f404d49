// ================== cmd/api/main.go ==================
//
// @title GoalPath API
// @version 1.0
// @description Personal goals and user profiles
// @host localhost:8080
// @BasePath /
// @schemes http
package main

func main() {
	Execute()
}
