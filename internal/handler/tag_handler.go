package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/myrteametrics/goldenbatch-api/internal/tag"
	"github.com/myrteametrics/goldenbatch-api/pkg/utils/httputil"
	"go.uber.org/zap"
)

// GetTags godoc
//
//	@Id				GetTags
//
//	@Summary		Get all tag mappings
//	@Description	Get all tag mappings, optionally restricted to one category
//	@Tags			Tags
//	@Produce		json
//	@Param			type	query		string				false	"Tag category (CMA, CPP or CQA)"
//	@Success		200		{array}		tag.TagConfig		"list of all tags"
//	@Failure		400		{object}	httputil.APIError	"Bad Request"
//	@Failure		500		{object}	httputil.APIError	"Internal Server Error"
//	@Router			/tags [get]
func GetTags(w http.ResponseWriter, r *http.Request) {
	var tags []tag.TagConfig
	var err error

	if t := QueryParamToOptionalString(r, "type", ""); t != "" {
		tagType := tag.Type(t)
		if !tagType.IsValid() {
			zap.L().Warn("Unknown tag type", zap.String("type", t))
			httputil.Error(w, r, httputil.ErrAPIUnexpectedParamValue, fmt.Errorf("unknown tag type %q", t))
			return
		}
		tags, err = tag.R().GetAllByType(tagType)
	} else {
		tags, err = tag.R().GetAll()
	}
	if err != nil {
		zap.L().Error("Error getting tags", zap.Error(err))
		httputil.Error(w, r, httputil.ErrAPIDBSelectFailed, err)
		return
	}

	httputil.JSON(w, r, tags)
}

// GetTag godoc
//
//	@Id				GetTag
//
//	@Summary		Get a tag mapping
//	@Description	Get a tag mapping
//	@Tags			Tags
//	@Produce		json
//	@Param			id	path		string				true	"Tag ID"
//	@Success		200	{object}	tag.TagConfig		"tag"
//	@Failure		404	{object}	httputil.APIError	"Not Found"
//	@Router			/tags/{id} [get]
func GetTag(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	t, found, err := tag.R().Get(id)
	if err != nil {
		zap.L().Error("Cannot get tag", zap.String("tagId", id), zap.Error(err))
		httputil.Error(w, r, httputil.ErrAPIDBSelectFailed, err)
		return
	}
	if !found {
		zap.L().Warn("Tag does not exist", zap.String("tagId", id))
		httputil.Error(w, r, httputil.ErrAPIDBResourceNotFound, fmt.Errorf("%w: %s", tag.ErrNotFound, id))
		return
	}

	httputil.JSON(w, r, t)
}

// GetTagDeployment godoc
//
//	@Id				GetTagDeployment
//
//	@Summary		Get the deployable tag configuration
//	@Description	Get every tag mapping grouped by category, as pushed to the gateway
//	@Tags			Tags
//	@Produce		json
//	@Success		200	{object}	tag.Deployment		"deployment"
//	@Failure		500	{object}	httputil.APIError	"Internal Server Error"
//	@Router			/tags/deploy [get]
func GetTagDeployment(w http.ResponseWriter, r *http.Request) {
	tags, err := tag.R().GetAll()
	if err != nil {
		zap.L().Error("Error getting tags", zap.Error(err))
		httputil.Error(w, r, httputil.ErrAPIDBSelectFailed, err)
		return
	}

	deployment := tag.BuildDeployment(tags)
	zap.L().Info("Tag configuration deployed", zap.Int("nodes", deployment.NodeCount))
	httputil.JSON(w, r, deployment)
}

// ValidateTag godoc
//
//	@Id				ValidateTag
//
//	@Summary		Validate a tag mapping
//	@Description	Validate a tag mapping without storing it
//	@Tags			Tags
//	@Accept			json
//	@Produce		json
//	@Param			tag	body		tag.TagConfig		true	"Tag mapping (json)"
//	@Success		200	{object}	tag.TagConfig		"tag"
//	@Failure		400	{object}	httputil.APIError	"Bad Request"
//	@Router			/tags/validate [post]
func ValidateTag(w http.ResponseWriter, r *http.Request) {
	var newTag tag.TagConfig
	if !decodeBody(w, r, "Tag", &newTag) {
		return
	}

	if ok, err := newTag.IsValid(); !ok {
		zap.L().Warn("Tag is not valid", zap.Error(err))
		httputil.Error(w, r, httputil.ErrAPIResourceInvalid, err)
		return
	}

	httputil.JSON(w, r, newTag)
}

// PostTag godoc
//
//	@Id				PostTag
//
//	@Summary		Create a tag mapping
//	@Description	Create a tag mapping. The id is generated when missing.
//	@Tags			Tags
//	@Accept			json
//	@Produce		json
//	@Param			tag	body		tag.TagConfig		true	"Tag mapping (json)"
//	@Success		200	{object}	tag.TagConfig		"tag"
//	@Failure		400	{object}	httputil.APIError	"Bad Request"
//	@Failure		500	{object}	httputil.APIError	"Internal Server Error"
//	@Router			/tags [post]
func PostTag(w http.ResponseWriter, r *http.Request) {
	var newTag tag.TagConfig
	if !decodeBody(w, r, "Tag", &newTag) {
		return
	}

	if ok, err := newTag.IsValid(); !ok {
		zap.L().Warn("Tag is not valid", zap.Error(err))
		httputil.Error(w, r, httputil.ErrAPIResourceInvalid, err)
		return
	}

	newTagID, err := tag.R().Create(newTag)
	if errors.Is(err, tag.ErrAlreadyExists) {
		zap.L().Warn("Tag already exists", zap.String("tagId", newTag.ID))
		httputil.Error(w, r, httputil.ErrAPIResourceDuplicate, err)
		return
	}
	if err != nil {
		zap.L().Error("Error while creating the Tag", zap.Error(err))
		httputil.Error(w, r, httputil.ErrAPIDBInsertFailed, err)
		return
	}

	newTag.ID = newTagID
	httputil.JSON(w, r, newTag)
}

// PutTag godoc
//
//	@Id				PutTag
//
//	@Summary		Replace a tag mapping
//	@Description	Replace a tag mapping
//	@Tags			Tags
//	@Accept			json
//	@Produce		json
//	@Param			id	path		string				true	"Tag ID"
//	@Param			tag	body		tag.TagConfig		true	"Tag mapping (json)"
//	@Success		200	{object}	tag.TagConfig		"tag"
//	@Failure		400	{object}	httputil.APIError	"Bad Request"
//	@Failure		404	{object}	httputil.APIError	"Not Found"
//	@Router			/tags/{id} [put]
func PutTag(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var newTag tag.TagConfig
	if !decodeBody(w, r, "Tag", &newTag) {
		return
	}
	newTag.ID = id

	if ok, err := newTag.IsValid(); !ok {
		zap.L().Warn("Tag is not valid", zap.Error(err))
		httputil.Error(w, r, httputil.ErrAPIResourceInvalid, err)
		return
	}

	err := tag.R().Update(newTag)
	if errors.Is(err, tag.ErrNotFound) {
		zap.L().Warn("Tag does not exist", zap.String("tagId", id))
		httputil.Error(w, r, httputil.ErrAPIDBResourceNotFound, err)
		return
	}
	if err != nil {
		zap.L().Error("Error while updating the Tag", zap.String("tagId", id), zap.Error(err))
		httputil.Error(w, r, httputil.ErrAPIDBUpdateFailed, err)
		return
	}

	httputil.JSON(w, r, newTag)
}

// DeleteTag godoc
//
//	@Id				DeleteTag
//
//	@Summary		Delete a tag mapping
//	@Description	Delete a tag mapping
//	@Tags			Tags
//	@Param			id	path	string	true	"Tag ID"
//	@Success		200	"Status OK"
//	@Failure		404	{object}	httputil.APIError	"Not Found"
//	@Router			/tags/{id} [delete]
func DeleteTag(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	err := tag.R().Delete(id)
	if errors.Is(err, tag.ErrNotFound) {
		zap.L().Warn("Tag does not exist", zap.String("tagId", id))
		httputil.Error(w, r, httputil.ErrAPIDBResourceNotFound, err)
		return
	}
	if err != nil {
		zap.L().Error("Error while deleting the Tag", zap.String("tagId", id), zap.Error(err))
		httputil.Error(w, r, httputil.ErrAPIDBDeleteFailed, err)
		return
	}

	httputil.OK(w, r)
}
