package cmd

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strings"

	"github.com/bnema/petcare-cli/internal/ports"
	"github.com/spf13/cobra"
)

func newAPICmd(app *app) *cobra.Command {
	var (
		data      string
		query     []string
		headers   []string
		fields    []string
		filePath  string
		fileField string
		anonymous bool
	)

	cmd := &cobra.Command{
		Use:   "api <method> <path>",
		Short: "Send a raw authenticated request to the PetCare API",
		Example: `  pc api GET /pets --query species=dog
  pc api PUT /pets/5 --data '{"name":"Rex"}'
  pc api POST /pets/5/photo --file rex.jpg --file-field photo`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := ports.Request{
				Method:    strings.ToUpper(args[0]),
				Path:      args[1],
				Anonymous: anonymous,
			}

			queryPairs, err := parsePairs("query", query)
			if err != nil {
				return err
			}
			if len(queryPairs) > 0 {
				req.Query = url.Values{}
				for key, value := range queryPairs {
					req.Query.Set(key, value)
				}
			}

			headerPairs, err := parsePairs("header", headers)
			if err != nil {
				return err
			}
			if len(headerPairs) > 0 {
				req.Header = http.Header{}
				for key, value := range headerPairs {
					req.Header.Set(key, value)
				}
			}

			formFields, err := parsePairs("field", fields)
			if err != nil {
				return err
			}

			switch {
			case filePath != "" && data != "":
				return errors.New("--data and --file cannot be combined")
			case filePath != "":
				upload, file, err := openUpload(filePath, formFields)
				if err != nil {
					return err
				}
				defer file.Close()
				req.Form = &ports.Form{
					Fields: upload.Fields,
					Files:  []ports.FormFile{{Field: fileField, FileName: upload.FileName, Content: upload.Content}},
				}
			case data != "":
				body, err := readData(data)
				if err != nil {
					return err
				}
				req.Body = body
			}

			resp, err := app.api.Do(cmd.Context(), req, nil)
			if err != nil {
				return err
			}
			return writeRawBody(cmd, resp.Body)
		},
	}

	cmd.Flags().StringVarP(&data, "data", "d", "", "JSON body, or @file to read it from a file")
	cmd.Flags().StringArrayVarP(&query, "query", "q", nil, "Query parameter key=value (repeatable)")
	cmd.Flags().StringArrayVarP(&headers, "header", "H", nil, "Extra header key=value (repeatable)")
	cmd.Flags().StringArrayVarP(&fields, "field", "F", nil, "Multipart form field key=value (repeatable, with --file)")
	cmd.Flags().StringVar(&filePath, "file", "", "Send this file as multipart form data")
	cmd.Flags().StringVar(&fileField, "file-field", "file", "Form field name for --file")
	cmd.Flags().BoolVar(&anonymous, "anonymous", false, "Do not attach the session token")

	return cmd
}

func readData(raw string) (json.RawMessage, error) {
	payload := []byte(raw)
	if path, ok := strings.CutPrefix(raw, "@"); ok {
		content, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read --data file: %w", err)
		}
		payload = content
	}

	if !json.Valid(payload) {
		return nil, errors.New("--data is not valid JSON")
	}
	return json.RawMessage(payload), nil
}

func writeRawBody(cmd *cobra.Command, body []byte) error {
	if len(bytes.TrimSpace(body)) == 0 {
		return nil
	}

	var pretty bytes.Buffer
	if err := json.Indent(&pretty, body, "", "  "); err == nil {
		pretty.WriteByte('\n')
		_, err = cmd.OutOrStdout().Write(pretty.Bytes())
		return err
	}

	_, err := fmt.Fprintln(cmd.OutOrStdout(), string(body))
	return err
}
