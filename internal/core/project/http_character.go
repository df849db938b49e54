// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package project

import (
	"net/http"

	requestutil "github.com/dublab/studio/internal/platform/request"
	"github.com/dublab/studio/internal/platform/respond"
)

func (handler *Handler) listCharacters(writer http.ResponseWriter, request *http.Request) {
	characters, err := handler.service.ListCharacters(request.Context(), requestutil.Param(request, "slug"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, characters)
}

func (handler *Handler) createCharacter(writer http.ResponseWriter, request *http.Request) {
	var input CharacterInput
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	character, err := handler.service.CreateCharacter(request.Context(), requestutil.Param(request, "slug"), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, character)
}

func (handler *Handler) deleteCharacter(writer http.ResponseWriter, request *http.Request) {
	characterID, err := requestutil.IntID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.DeleteCharacter(request.Context(), requestutil.Param(request, "slug"), characterID); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
