// Package client provides a Go client for the IBM Cognos Analytics REST API.
//
// A Client holds the session state of one Cognos endpoint: it logs on and
// off, lists and edits the content store folder tree, and fetches report
// data. Clients are handed out by a SessionManager, which keeps at most one
// session per endpoint and, by default, one endpoint at a time.
//
// # Quick Start
//
//	mgr, err := client.NewSessionManager(client.DialHTTP(client.HTTPOptions{}))
//	c, err := mgr.GetClient(ctx, "https://cognos.example.com/ibmcognos", false)
//	_, err = c.Login(ctx, "jdoe", "secret")
//	defer c.Logoff(ctx)
//
//	roots, err := c.ListRootFolder(ctx) // My Content, Team Content
//
// # Listing Folders
//
// ListFolderByID returns one level of a folder, filtered by a shell glob on
// the display name and by object type:
//
//	sales, err := c.ListFolderByID(ctx, roots[1].ID, "Sales*", client.TypeFolder, client.TypeReport)
//
// Children that cannot be decoded are logged and skipped; they never fail
// the listing.
//
// # Error Contract
//
// Query operations (Login, ListRootFolder, ListFolder, ListFolderByID,
// ListPublicFolders, GetReportData) return errors. HTTP failures surface as
// *APIError:
//
//	var apiErr *client.APIError
//	if errors.As(err, &apiErr) && apiErr.Unauthenticated() {
//	    // log on again
//	}
//
// Mutating operations (Logoff, AddFolder, DeleteFolder, UploadExtension) are
// best-effort. They log failures and report them only through their result
// (ok == false, nil or false), so callers can fire them without error
// handling.
//
// # Transports
//
// The Client talks to the server through the Transport interface. DialHTTP
// builds the HTTP implementation; tests and embedders may supply their own.
// Transport capabilities decide environment-dependent behavior, such as
// whether AddFolder reads the new id from the Location header.
package client
