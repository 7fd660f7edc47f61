package document

// Cover narrative, fixed text. Markup is limited to <b>, <u> and <br/>, which
// both renderers understand.
const coverIntro = `The analysed report focuses on the Indian used car market, with the CSV providing raw, structured data (7,252 entries, 14 attributes) and the PDF presenting this data in table format for analysis. The dataset's diversity (budget to luxury cars, multiple cities, fuel types) makes it valuable for predictive modeling and market studies.`

const coverBody = `This report includes statistical insights, visualizations, and the full dataset.This report includes statistical insights, visualizations, and the full dataset. It covers a diverse range of vehicles, from budget models (e.g., Tata Nano, Maruti Alto) to luxury brands (e.g., Audi, BMW, Mercedes-Benz), with Diesel and Petrol as dominant fuel types and a mix of manual and automatic transmissions. It spans multiple cities, enabling region-specific analysis, and captures ownership histories to assess resale value impacts.
<br/><br/>
<b><u>Market Analysis Report Overview (from PDF)</u></b>
<br/><br/>
The "Used Cars Market Analysis Report" spans 305 pages, with a significant portion dedicated to the "Full Data Table" (pages 5–305), which mirrors the CSV dataset, listing details like Brand, Name, Location, Year, Fuel Type, Transmission, Owner Type, and Price for thousands of cars. The report also includes:
<br/><br/>
<b>• Visual Insights (Page 3): </b>Likely contains charts or graphs (e.g., distribution of cars by year, as hinted on Page 4), though specific visualizations are not fully detailed due to truncation.<br/>
<b>• Data Distribution (Page 4): </b>Mentions "Number of Cars by Year" (1990–2019), suggesting an analysis of market trends over time.<br/>
<b>• Comprehensive Data Tables (Pages 5–305):</b>Provide detailed records, organized by attributes like Brand, Location, and Price, covering cities such as Mumbai, Delhi, Chennai, Kolkata, Hyderabad, and others, with prices ranging from 0.56 lakhs to 69.5 lakhs.
<br/><br/>
<b><u>Key Insights</u></b>
<br/><br/>
<b>• Diversity: </b>The dataset includes vehicles from various brands, years, and price points, reflecting the heterogeneity of the Indian used car market.<br/>
<b>• Geographical Spread: </b>Listings span multiple cities, enabling region-specific analyses.<br/>
<b>• Challenges: </b>Missing data in "New Price" and "Power" fields, and inconsistent mileage values (e.g., 0.0 kmpl), require preprocessing for accurate analysis.<br/>
<b>• Applications: </b>The dataset and report are valuable for studying price determinants (e.g., mileage, engine size, ownership history), predicting resale values, and understanding regional market preferences.
<br/><br/>
This combined dataset and report serve as a robust resource for researchers, analysts, and automotive professionals aiming to explore pricing trends, consumer behavior, and market dynamics in India's used car industry. The dataset's diversity (budget to luxury cars, multiple cities, fuel types) makes it valuable for predictive modeling and market studies.`
