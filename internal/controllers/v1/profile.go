package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/quote-zero/backend/internal/httputil"
	"github.com/quote-zero/backend/internal/models"
	"golang.org/x/exp/slices"
)

func RegisterProfileRoutes(r *gin.RouterGroup) {
	{
		r.OPTIONS("", OptionsProfiles)
		r.GET("", GetProfiles)
		r.POST("", CreateProfiles)
	}
	{
		r.OPTIONS("/:id", OptionsProfileDetail)
		r.GET("/:id", GetProfile)
		r.PATCH("/:id", UpdateProfile)
		r.DELETE("/:id", DeleteProfile)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Profiles
// @Success		204
// @Router			/v1/profiles [options]
func OptionsProfiles(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Profiles
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/profiles/{id} [options]
func OptionsProfileDetail(c *gin.Context) {
	resourceOptionsDetail(c, models.Profile{})
}

// @Summary		Create profiles
// @Description	Creates new profiles. Only one profile can exist per owner.
// @Tags			Profiles
// @Produce		json
// @Success		201			{object}	ProfileCreateResponse
// @Failure		400			{object}	ProfileCreateResponse
// @Failure		500			{object}	ProfileCreateResponse
// @Param			profiles	body		[]ProfileEditable	true	"Profiles"
// @Router			/v1/profiles [post]
func CreateProfiles(c *gin.Context) {
	var profiles []ProfileEditable

	// Bind data and return error if not possible
	err := httputil.BindData(c, &profiles)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), ProfileCreateResponse{
			Error: &e,
		})
		return
	}

	// The final http status. Will be modified when errors occur
	status := http.StatusCreated
	r := ProfileCreateResponse{}

	for _, create := range profiles {
		profile := create.model()
		err = models.DB.Create(&profile).Error
		if err != nil {
			status = r.appendError(err, status)
			continue
		}

		// Transform for the API and append
		apiResource := newProfile(c, profile)
		r.Data = append(r.Data, ProfileResponse{Data: &apiResource})
	}

	c.JSON(status, r)
}

// @Summary		Get profiles
// @Description	Returns a list of profiles
// @Tags			Profiles
// @Produce		json
// @Success		200	{object}	ProfileListResponse
// @Failure		400	{object}	ProfileListResponse
// @Failure		500	{object}	ProfileListResponse
// @Router			/v1/profiles [get]
// @Param			owner	query	string	false	"Filter by owner ID"
// @Param			email	query	string	false	"Filter by the exact email address"
// @Param			offset	query	uint	false	"The offset of the first profile returned. Defaults to 0."
// @Param			limit	query	int		false	"Maximum number of profiles to return. Defaults to 50."
func GetProfiles(c *gin.Context) {
	var filter ProfileQueryFilter

	if err := c.Bind(&filter); err != nil {
		s := err.Error()
		c.JSON(http.StatusBadRequest, ProfileListResponse{
			Error: &s,
		})
		return
	}

	queryFields, setFields := httputil.GetURLFields(c.Request.URL, filter)

	where := filter.model()

	q := models.DB.
		Order("profiles.full_name ASC").
		Where(&where, queryFields...)

	// Set the offset. Does not need checking since the default is 0
	q = q.Offset(int(filter.Offset))

	// Default to 50 profiles and set the limit
	limit := 50
	if slices.Contains(setFields, "Limit") {
		limit = filter.Limit
	}
	q = q.Limit(limit)

	var profiles []models.Profile
	err := q.Find(&profiles).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ProfileListResponse{
			Error: &s,
		})
		return
	}

	var count int64
	err = q.Limit(-1).Offset(-1).Count(&count).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), ProfileListResponse{
			Error: &e,
		})
		return
	}

	// Transform resources to their API representation
	data := make([]Profile, 0, len(profiles))
	for _, profile := range profiles {
		data = append(data, newProfile(c, profile))
	}

	c.JSON(http.StatusOK, ProfileListResponse{
		Data: data,
		Pagination: &Pagination{
			Count:  len(data),
			Total:  count,
			Offset: filter.Offset,
			Limit:  limit,
		},
	})
}

// @Summary		Get profile
// @Description	Returns a specific profile
// @Tags			Profiles
// @Produce		json
// @Success		200	{object}	ProfileResponse
// @Failure		400	{object}	ProfileResponse
// @Failure		404	{object}	ProfileResponse
// @Failure		500	{object}	ProfileResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/profiles/{id} [get]
func GetProfile(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), ProfileResponse{
			Error: &e,
		})
		return
	}

	var profile models.Profile
	err = models.DB.First(&profile, uri.ID).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), ProfileResponse{
			Error: &e,
		})
		return
	}

	apiResource := newProfile(c, profile)
	c.JSON(http.StatusOK, ProfileResponse{Data: &apiResource})
}

// @Summary		Update profile
// @Description	Updates an existing profile. Only values to be updated need to be specified.
// @Tags			Profiles
// @Accept			json
// @Produce		json
// @Success		200		{object}	ProfileResponse
// @Failure		400		{object}	ProfileResponse
// @Failure		404		{object}	ProfileResponse
// @Failure		500		{object}	ProfileResponse
// @Param			id		path		URIID			true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			profile	body		ProfileEditable	true	"Profile"
// @Router			/v1/profiles/{id} [patch]
func UpdateProfile(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), ProfileResponse{
			Error: &e,
		})
		return
	}

	var profile models.Profile
	err = models.DB.First(&profile, uri.ID).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), ProfileResponse{
			Error: &e,
		})
		return
	}

	// Get the fields that are set to be updated
	updateFields, err := httputil.GetBodyFields(c, ProfileEditable{})
	if err != nil {
		e := err.Error()
		c.JSON(status(err), ProfileResponse{
			Error: &e,
		})
		return
	}

	// Bind the data for the patch
	var data ProfileEditable
	err = httputil.BindData(c, &data)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), ProfileResponse{
			Error: &e,
		})
		return
	}

	err = models.DB.Model(&profile).Select("", updateFields...).Updates(data.model()).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), ProfileResponse{
			Error: &e,
		})
		return
	}

	apiResource := newProfile(c, profile)
	c.JSON(http.StatusOK, ProfileResponse{Data: &apiResource})
}

// @Summary		Delete profile
// @Description	Deletes a profile
// @Tags			Profiles
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/profiles/{id} [delete]
func DeleteProfile(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	var profile models.Profile
	err = models.DB.First(&profile, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = models.DB.Delete(&profile).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}
