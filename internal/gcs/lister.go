// Package gcs lists uploaded video batches in Google Cloud Storage. Uploads
// land under a dated folder per scrape (e.g. TIKTOK_samples/2024-06-01/), and
// a run always processes the most recent folder.
package gcs

import (
	"context"
	"fmt"
	"path"
	"sort"
	"strings"

	"cloud.google.com/go/storage"
	"google.golang.org/api/iterator"
)

const videoExtension = ".mp4"

// ListFolders returns the folder names directly under prefix, newest first.
// Folder names are assumed to sort lexically by date (YYYY-MM-DD).
func ListFolders(ctx context.Context, client *storage.Client, bucket, prefix string) ([]string, error) {
	it := client.Bucket(bucket).Objects(ctx, &storage.Query{
		Prefix:    prefix,
		Delimiter: "/",
	})

	var folders []string
	for {
		attrs, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("ListFolders: iterating %s/%s: %w", bucket, prefix, err)
		}
		// Synthetic prefix entries represent the folders; real objects at
		// the top level are not batches.
		if attrs.Prefix != "" {
			folders = append(folders, folderName(attrs.Prefix))
		}
	}

	sort.Sort(sort.Reverse(sort.StringSlice(folders)))
	return folders, nil
}

// ListVideoObjects returns the video object names under prefix.
func ListVideoObjects(ctx context.Context, client *storage.Client, bucket, prefix string) ([]string, error) {
	it := client.Bucket(bucket).Objects(ctx, &storage.Query{Prefix: prefix})

	var objects []string
	for {
		attrs, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("ListVideoObjects: iterating %s/%s: %w", bucket, prefix, err)
		}
		if isVideo(attrs.Name) {
			objects = append(objects, attrs.Name)
		}
	}

	return objects, nil
}

// FindLatestBatch returns the most recent dated folder under basePrefix and
// the video objects inside it. When no folders exist it returns ("", nil, nil):
// an empty upload area is a clean empty result, not an error.
func FindLatestBatch(ctx context.Context, client *storage.Client, bucket, basePrefix string) (string, []string, error) {
	folders, err := ListFolders(ctx, client, bucket, basePrefix)
	if err != nil {
		return "", nil, fmt.Errorf("FindLatestBatch: %w", err)
	}
	if len(folders) == 0 {
		return "", nil, nil
	}

	latest := folders[0]
	objects, err := ListVideoObjects(ctx, client, bucket, basePrefix+latest+"/")
	if err != nil {
		return "", nil, fmt.Errorf("FindLatestBatch: %w", err)
	}

	return latest, objects, nil
}

// VideoURI builds the gs:// URI the generative model reads the video from.
func VideoURI(bucket, objectName string) string {
	return fmt.Sprintf("gs://%s/%s", bucket, objectName)
}

// folderName extracts the folder's own name from a delimiter listing prefix,
// e.g. "TIKTOK_samples/2024-06-01/" -> "2024-06-01".
func folderName(prefix string) string {
	return path.Base(strings.TrimSuffix(prefix, "/"))
}

func isVideo(objectName string) bool {
	return strings.HasSuffix(strings.ToLower(objectName), videoExtension)
}
