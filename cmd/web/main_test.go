package main

func testLookupEnv(key string) (string, bool) {
	switch key {
	case "COACHPLAN_SQLITE_URL":
		return ":memory:", true
	case "COACHPLAN_ADDR":
		return "localhost:0", true
	default:
		return "", false
	}
}
