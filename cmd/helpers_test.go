package main

func ptrInt(v int) *int       { return &v }
func ptrInt64(v int64) *int64 { return &v }
