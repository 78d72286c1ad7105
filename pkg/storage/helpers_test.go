package storage_test

import "github.com/goliatone/go-formstep/pkg/model"

func modelRecord() model.FormData {
	return model.FormData{Name: "Ada"}
}
