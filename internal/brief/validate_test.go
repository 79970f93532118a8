package brief

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validRequest() Request {
	return Request{
		Title:           "春のキャンペーンLP",
		ClientName:      "株式会社サンプル",
		DeliverableType: "LP",
		Background:      "新商品の発売に合わせて認知を広げたい",
		Problem:         "既存LPの直帰率が高い",
		Goal:            "申込数を月100件にする",
		Elements:        "ファーストビュー、料金表、FAQ",
	}
}

func TestRequest_Validate(t *testing.T) {
	testCases := []struct {
		name       string
		mutate     func(r *Request)
		wantFields []string
	}{
		{
			name:   "Complete_Request",
			mutate: func(r *Request) {},
		},
		{
			name:       "Missing_Title",
			mutate:     func(r *Request) { r.Title = "" },
			wantFields: []string{"title"},
		},
		{
			name:       "Whitespace_Only_Counts_As_Missing",
			mutate:     func(r *Request) { r.Goal = "  \n\t" },
			wantFields: []string{"goal"},
		},
		{
			name: "All_Required_Missing_In_Form_Order",
			mutate: func(r *Request) {
				*r = Request{}
			},
			wantFields: []string{"title", "deliverable_type", "background", "problem", "goal", "elements"},
		},
		{
			name:       "Other_Deliverable_Without_Text",
			mutate:     func(r *Request) { r.DeliverableType = OtherDeliverable },
			wantFields: []string{"deliverable_type_other"},
		},
		{
			name: "Other_Deliverable_With_Text",
			mutate: func(r *Request) {
				r.DeliverableType = OtherDeliverable
				r.DeliverableTypeOther = "動画サムネイル"
			},
		},
		{
			name:   "Other_Text_Ignored_For_Regular_Type",
			mutate: func(r *Request) { r.DeliverableTypeOther = "" },
		},
		{
			name:       "Unknown_Priority",
			mutate:     func(r *Request) { r.Priority = "urgent" },
			wantFields: []string{"priority"},
		},
		{
			name:   "Known_Priority",
			mutate: func(r *Request) { r.Priority = PriorityHigh },
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := validRequest()
			tc.mutate(&req)

			err := req.Validate()
			if len(tc.wantFields) == 0 {
				require.NoError(t, err)
				return
			}

			require.Error(t, err)
			assert.ErrorIs(t, err, ErrMissingRequiredFields)

			var vErr *ValidationError
			require.True(t, errors.As(err, &vErr), "expected *ValidationError, got %T", err)
			got := make([]string, len(vErr.Fields))
			for i, f := range vErr.Fields {
				got[i] = f.Field
				assert.NotEmpty(t, f.Message, "field %s should carry a message", f.Field)
			}
			assert.Equal(t, tc.wantFields, got)
		})
	}
}

func TestValidationError_Messages(t *testing.T) {
	req := validRequest()
	req.Title = ""
	req.DeliverableType = OtherDeliverable

	var vErr *ValidationError
	require.ErrorAs(t, req.Validate(), &vErr)

	msgs := vErr.Messages()
	assert.Equal(t, "タイトルは必須です", msgs["title"])
	assert.Equal(t, "成果物を入力してください", msgs["deliverable_type_other"])
	assert.Contains(t, vErr.Error(), "title, deliverable_type_other")
}

func TestRequest_DeliverableLabel(t *testing.T) {
	req := validRequest()
	assert.Equal(t, "LP", req.DeliverableLabel())

	req.DeliverableType = OtherDeliverable
	req.DeliverableTypeOther = "  動画サムネイル "
	assert.Equal(t, "動画サムネイル", req.DeliverableLabel())
}

func TestRequest_UnmarshalJSON(t *testing.T) {
	t.Run("Legacy_Aliases", func(t *testing.T) {
		var req Request
		err := json.Unmarshal([]byte(`{"title":"t","target_user":"30代の会社員","business_goal":"CVR 2%"}`), &req)
		require.NoError(t, err)
		assert.Equal(t, "t", req.Title)
		assert.Equal(t, "30代の会社員", req.TargetUserText)
		assert.Equal(t, "CVR 2%", req.BusinessGoalText)
	})

	t.Run("New_Fields_Win_Over_Aliases", func(t *testing.T) {
		var req Request
		err := json.Unmarshal([]byte(`{"target_user":"old","target_user_text":"new"}`), &req)
		require.NoError(t, err)
		assert.Equal(t, "new", req.TargetUserText)
	})

	t.Run("Channels_As_String", func(t *testing.T) {
		var req Request
		err := json.Unmarshal([]byte(`{"channels":"SEO、 メール / メルマガ\nイベント,,"}`), &req)
		require.NoError(t, err)
		assert.Equal(t, StringList{"SEO", "メール / メルマガ", "イベント"}, req.Channels)
	})

	t.Run("Channels_As_Array", func(t *testing.T) {
		var req Request
		err := json.Unmarshal([]byte(`{"channels":["SEO","イベント"]}`), &req)
		require.NoError(t, err)
		assert.Equal(t, StringList{"SEO", "イベント"}, req.Channels)
	})

	t.Run("Channels_Wrong_Type", func(t *testing.T) {
		var req Request
		err := json.Unmarshal([]byte(`{"channels":42}`), &req)
		assert.Error(t, err)
	})
}
