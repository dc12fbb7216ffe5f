package duplicate

// @step ^same$
func First() {}

// @step ^same$
func Second() {}
