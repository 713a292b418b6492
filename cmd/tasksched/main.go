// Command tasksched admits tasks, records dependencies between them and runs
// them in priority order, keeping state in a text file or SQLite database.
package main

func main() {
	Execute()
}
