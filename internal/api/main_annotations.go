// @title           pagegen API
// @version         1.0
// @description     Programmatic SEO page generator. Authenticate with an API token.
// @BasePath        /api/v1
// @securityDefinitions.apikey BearerToken
// @in              header
// @name            Authorization
// @description     Type "Bearer" followed by a space and your API token. Example: "Bearer pg_xxx"
package api
